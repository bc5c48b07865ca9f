package extraction

import (
	"fmt"

	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractAmount", func() {
	var (
		text   string
		amount decimal.Decimal
	)

	JustBeforeEach(func() {
		amount = ExtractAmount(text)
	})

	When("the text has a well-formed currency token", func() {
		BeforeEach(func() {
			text = "Valor\nR$ 1.234,56\nTarifa R$ 0,00"
		})

		It("parses the first token", func() {
			Expect(amount.Equal(decimal.RequireFromString("1234.56"))).To(BeTrue())
		})
	})

	When("the token has no space after the symbol", func() {
		BeforeEach(func() {
			text = "Total R$12.345,67"
		})

		It("parses the amount", func() {
			Expect(amount.String()).To(Equal("12345.67"))
		})
	})

	When("a no-break space follows the symbol", func() {
		BeforeEach(func() {
			text = "Valor R$\u00a012,50"
		})

		It("parses the amount", func() {
			Expect(amount.String()).To(Equal("12.5"))
		})
	})

	When("the token is followed by punctuation", func() {
		BeforeEach(func() {
			text = "Você pagou R$ 50,00."
		})

		It("ignores the trailing separator", func() {
			Expect(amount.String()).To(Equal("50"))
		})
	})

	When("the token has no digits", func() {
		BeforeEach(func() {
			text = "R$ ,"
		})

		It("defaults to zero", func() {
			Expect(amount.IsZero()).To(BeTrue())
		})
	})

	When("the text has no currency marker", func() {
		BeforeEach(func() {
			text = "Pix enviado 10 JUN 2023"
		})

		It("defaults to zero", func() {
			Expect(amount.IsZero()).To(BeTrue())
		})
	})
})

var _ = Describe("NormalizeMonth", func() {
	DescribeTable("converting date tokens",
		func(token, expected string) {
			Expect(NormalizeMonth(token)).To(Equal(expected))
		},
		Entry("March", "05 MAR 2024", "05/03/2024"),
		Entry("lowercase month", "10 jun 2023", "10/06/2023"),
		Entry("mixed case month", "31 Dez 2022", "31/12/2022"),
		Entry("February", "01 FEV 2024", "01/02/2024"),
		Entry("October", "15 OUT 2024", "15/10/2024"),
		Entry("unknown abbreviation", "05 Xyz 2024", "05 Xyz 2024"),
		Entry("English abbreviation", "05 Feb 2024", "05 Feb 2024"),
	)

	It("maps every month positionally", func() {
		for i, month := range Months {
			Expect(NormalizeMonth("01 " + month + " 2024")).To(Equal(fmt.Sprintf("01/%02d/2024", i+1)))
		}
	})
})

var _ = Describe("ExtractDate", func() {
	When("the text has a date token", func() {
		It("normalizes the first one", func() {
			Expect(ExtractDate("Data\n05 MAR 2024 - 14:32\n06 MAR 2024")).To(Equal("05/03/2024"))
		})
	})

	When("the month is not recognized", func() {
		It("returns the token verbatim", func() {
			Expect(ExtractDate("em 05 Abc 2024")).To(Equal("05 Abc 2024"))
		})
	})

	When("the text has no date token", func() {
		It("returns the sentinel", func() {
			Expect(ExtractDate("R$ 10,00\n2024-03-05")).To(Equal(DateNotDetermined))
		})
	})

	When("the separators are no-break spaces", func() {
		It("normalizes the token", func() {
			Expect(ExtractDate("Data 05\u00a0MAR\u00a02024")).To(Equal("05/03/2024"))
		})
	})

	When("the separators are tabs", func() {
		It("normalizes the token", func() {
			Expect(ExtractDate("05\tMAR\t2024")).To(Equal("05/03/2024"))
		})
	})

	When("the separators are not single whitespace", func() {
		It("returns the sentinel", func() {
			Expect(ExtractDate("05  MAR  2024")).To(Equal(DateNotDetermined))
		})
	})
})

var _ = Describe("ExtractPayerName", func() {
	var (
		text string
		name string
	)

	JustBeforeEach(func() {
		name = ExtractPayerName(text)
	})

	When("the name is on the line after the marker", func() {
		BeforeEach(func() {
			text = "Origem\nBanco X\nNome\nMaria Da Silva"
		})

		It("uses the next line", func() {
			Expect(name).To(Equal("Maria Da Silva"))
		})
	})

	When("the name shares the marker line", func() {
		BeforeEach(func() {
			text = "Comprovante\n  Origem  \n\nNome JOAO PEREIRA\nCPF ***.123.456-**"
		})

		It("title-cases the remainder", func() {
			Expect(name).To(Equal("Joao Pereira"))
		})
	})

	When("the name has accented letters", func() {
		BeforeEach(func() {
			text = "Origem\nNome joão da conceição"
		})

		It("title-cases them", func() {
			Expect(name).To(Equal("João Da Conceição"))
		})
	})

	When("the name has a hyphen and an apostrophe", func() {
		BeforeEach(func() {
			text = "Origem\nNome maria-josé d'ávila"
		})

		It("capitalizes after the hyphen only", func() {
			Expect(name).To(Equal("Maria-José D'ávila"))
		})
	})

	When("Nome appears before any Origem line", func() {
		BeforeEach(func() {
			text = "Destino\nNome Padaria Central\nInstituição Banco Y"
		})

		It("returns the sentinel", func() {
			Expect(name).To(Equal(PayerUnidentified))
		})
	})

	When("Nome appears both before and after Origem", func() {
		BeforeEach(func() {
			text = "Destino\nNome Padaria Central\nOrigem\nNome Ana Souza\nNome Outra Pessoa"
		})

		It("uses the first one after Origem", func() {
			Expect(name).To(Equal("Ana Souza"))
		})
	})

	When("the Origem line itself contains Nome", func() {
		BeforeEach(func() {
			text = "Origem Nome Ignorado\nNome Carla Dias"
		})

		It("skips the Origem line", func() {
			Expect(name).To(Equal("Carla Dias"))
		})
	})

	When("Origem has no Nome after it", func() {
		BeforeEach(func() {
			text = "Nome Antes\nOrigem\nBanco X\nAgência 0001"
		})

		It("returns the sentinel", func() {
			Expect(name).To(Equal(PayerUnidentified))
		})
	})

	When("the marker line is the last line and has no value", func() {
		BeforeEach(func() {
			text = "Origem\nNome"
		})

		It("returns the sentinel", func() {
			Expect(name).To(Equal(PayerUnidentified))
		})
	})

	When("the markers differ in case", func() {
		BeforeEach(func() {
			text = "ORIGEM\nNOME Maria"
		})

		It("does not match them", func() {
			Expect(name).To(Equal(PayerUnidentified))
		})
	})
})
