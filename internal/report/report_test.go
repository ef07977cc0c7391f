package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	v1 "github.com/jwodder/axum-hammer/api/v1"
	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/models"
	"github.com/jwodder/axum-hammer/internal/report"
)

func newRun() *models.Run {
	run := models.NewRun("http://127.0.0.1:8080/hello", config.SourceRepeat, 3)
	run.Traversals = []models.Traversal{
		{
			Workers:      1,
			Elapsed:      3 * time.Second,
			RequestTimes: []time.Duration{time.Second, time.Second, time.Second},
			Stats:        models.Stats{Mean: time.Second, Min: time.Second, Max: time.Second},
		},
		{
			Workers:      2,
			Elapsed:      1500 * time.Millisecond,
			RequestTimes: []time.Duration{500 * time.Millisecond, time.Second, 1500 * time.Millisecond},
			Stats:        models.Stats{Mean: time.Second, StdDev: 500 * time.Millisecond},
		},
	}
	return run
}

var _ = Describe("Report", func() {
	var (
		run *models.Run
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		color.NoColor = true
		run = newRun()
		buf = &bytes.Buffer{}
	})

	Context("text", func() {
		It("should print one line per traversal", func() {
			Expect(report.WriteText(buf, run)).To(Succeed())

			Expect(buf.String()).To(Equal(
				"1 workers: 3s (1s ± 0s)\n" +
					"2 workers: 1.5s (1s ± 500ms)\n",
			))
		})
	})

	Context("json", func() {
		It("should encode every traversal", func() {
			Expect(report.WriteJSON(buf, run)).To(Succeed())

			var decoded v1.Report
			Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded.RunID).To(Equal(run.ID.String()))
			Expect(decoded.Traversals).To(HaveLen(2))
			Expect(decoded.Traversals[1].RequestTimes[0]).To(Equal(v1.Duration{Nanos: 500_000_000}))
		})
	})

	Context("csv", func() {
		It("should write one row per request", func() {
			Expect(report.WriteCSV(buf, run)).To(Succeed())

			rows, err := csv.NewReader(buf).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(7))
			Expect(rows[0]).To(Equal([]string{"workers", "index", "seconds"}))
			Expect(rows[4]).To(Equal([]string{"2", "0", "0.5"}))
		})
	})

	Context("xlsx", func() {
		It("should write a summary sheet and one sheet per traversal", func() {
			Expect(report.WriteXLSX(buf, run)).To(Succeed())

			f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			Expect(f.GetSheetList()).To(Equal([]string{
				"Summary",
				report.TraversalSheetName(0, 1),
				report.TraversalSheetName(1, 2),
			}))

			summary, err := f.GetRows("Summary")
			Expect(err).NotTo(HaveOccurred())
			Expect(summary).To(HaveLen(3))
			Expect(summary[2][0]).To(Equal("2"))
			Expect(summary[2][1]).To(Equal("1.5"))

			times, err := f.GetRows(report.TraversalSheetName(1, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(4))
		})
	})

	Context("Write", func() {
		It("should write to stdout when no output is given", func() {
			Expect(report.Write(config.FormatText, "", buf, run)).To(Succeed())

			Expect(buf.String()).To(ContainSubstring("2 workers"))
		})

		It("should write to the output file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "report.json")

			Expect(report.Write(config.FormatJSON, path, buf, run)).To(Succeed())

			Expect(buf.Len()).To(BeZero())
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"request_times"`))
		})

		It("should fail when the output file cannot be created", func() {
			path := filepath.Join(GinkgoT().TempDir(), "missing", "report.csv")

			Expect(report.Write(config.FormatCSV, path, buf, run)).NotTo(Succeed())
		})

		It("should reject an unknown format", func() {
			Expect(report.Write("yaml", "", buf, run)).NotTo(Succeed())
		})

		It("should not create the output file for an unknown format", func() {
			path := filepath.Join(GinkgoT().TempDir(), "report.yaml")

			Expect(report.Write("yaml", path, buf, run)).To(MatchError(ContainSubstring("unknown report format")))

			_, err := os.Stat(path)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
