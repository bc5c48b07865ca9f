package recognition

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cleanTranscript", func() {
	DescribeTable("stripping model formatting",
		func(input, expected string) {
			Expect(cleanTranscript(input)).To(Equal(expected))
		},
		Entry("plain text", "  Pix enviado\nR$ 10,00 \n", "Pix enviado\nR$ 10,00"),
		Entry("bare fence", "```\nPix enviado\nR$ 10,00\n```", "Pix enviado\nR$ 10,00"),
		Entry("fence with info string", "```text\nOrigem\nNome Ana\n```", "Origem\nNome Ana"),
		Entry("fence opening on a content line", "```R$ 10,00\nOrigem```", "R$ 10,00\nOrigem"),
	)
})
