package export

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/pix-sales/internal/extraction"
)

var _ = Describe("WriteXLSX", func() {
	var (
		outcomes []extraction.Outcome
		file     *excelize.File
	)

	BeforeEach(func() {
		outcomes = sampleOutcomes()
	})

	JustBeforeEach(func() {
		var buf bytes.Buffer
		Expect(WriteXLSX(&buf, "Pudim", outcomes)).To(Succeed())

		var err error
		file, err = excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		file.Close()
	})

	It("writes the records in column order", func() {
		rows, err := file.GetRows(salesSheet, excelize.Options{RawCellValue: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0]).To(Equal([]string{"Data", "Cliente", "Produto", "Qtd", "Valor Total", "Arquivo"}))
		Expect(rows[1]).To(Equal([]string{"10/06/2023", "Joao Pereira", "Pudim", "250", "1250", "a.jpg"}))
		Expect(rows[2]).To(Equal([]string{"ND", "Não identificado", "Pudim", "1.5", "7.5", "c.png"}))
	})

	It("writes the totals sheet", func() {
		rows, err := file.GetRows(summarySheet, excelize.Options{RawCellValue: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(ContainElement([]string{"Faturamento", "1257.5"}))
		Expect(rows).To(ContainElement([]string{"Comprovantes lidos", "2"}))
	})

	It("lists failed inputs", func() {
		rows, err := file.GetRows(errorsSheet)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(ContainElement([]string{"b.heic", "decoding HEIC/HEIF image: bad box"}))
	})

	When("every input was read", func() {
		BeforeEach(func() {
			outcomes = []extraction.Outcome{outcomes[0]}
		})

		It("omits the errors sheet", func() {
			Expect(file.GetSheetList()).To(Equal([]string{salesSheet, summarySheet}))
		})
	})
})

var _ = Describe("WriteCSV", func() {
	It("writes a row per outcome", func() {
		var buf bytes.Buffer
		Expect(WriteCSV(&buf, sampleOutcomes())).To(Succeed())
		Expect(buf.String()).To(Equal(
			"Data,Cliente,Produto,Qtd,Valor Total,Arquivo,Erro\n" +
				"10/06/2023,Joao Pereira,Pudim,250,1250.00,a.jpg,\n" +
				",,,,,b.heic,decoding HEIC/HEIF image: bad box\n" +
				"ND,Não identificado,Pudim,1.5,7.50,c.png,\n",
		))
	})
})

var _ = Describe("WriteReport", func() {
	It("prints the totals and the failures", func() {
		var buf bytes.Buffer
		outcomes := sampleOutcomes()
		Expect(WriteReport(&buf, Summarize("Pudim", outcomes), outcomes)).To(Succeed())

		report := buf.String()
		Expect(report).To(HavePrefix("Vendas de Pudim\n"))
		Expect(report).To(MatchRegexp(`Faturamento:\s+R\$\s?1\.257,50`))
		Expect(report).To(MatchRegexp(`Total de Pudims:\s+251\.5 un`))
		Expect(report).To(MatchRegexp(`Comprovantes lidos:\s+2`))
		Expect(report).To(ContainSubstring("b.heic"))
	})
})

var _ = Describe("DirSink", func() {
	It("writes files into the directory", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "out")
		sink, err := NewDirSink(dir)
		Expect(err).NotTo(HaveOccurred())

		path, err := sink.Save("Vendas_Pudim.csv", []byte("x"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, "Vendas_Pudim.csv")))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("x"))
	})

	It("does not escape the directory", func() {
		dir := GinkgoT().TempDir()
		sink, err := NewDirSink(dir)
		Expect(err).NotTo(HaveOccurred())

		path, err := sink.Save("../escape.csv", []byte("x"))
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Dir(path)).To(Equal(dir))
	})
})
