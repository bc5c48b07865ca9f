package recognition

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Unavailable", func() {
	It("fails every call with the startup error", func() {
		_, startErr := NewTesseract(TesseractConfig{Language: "por"})
		Expect(startErr).To(HaveOccurred())

		r := Unavailable{Err: startErr}
		_, err := r.Recognize(context.Background(), testPNG(), "image/png")
		Expect(errors.Is(err, ErrRecognizerUnavailable)).To(BeTrue())
		Expect(r.Close()).To(Succeed())
	})
})
