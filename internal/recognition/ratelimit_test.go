package recognition

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RateLimited", func() {
	var inner *countingRecognizer

	BeforeEach(func() {
		inner = &countingRecognizer{text: "ok"}
	})

	It("returns the recognizer unwrapped when unlimited", func() {
		Expect(NewRateLimited(inner, 0, 0)).To(BeIdenticalTo(inner))
	})

	It("lets the burst through", func() {
		limited := NewRateLimited(inner, 1, 2)
		for i := 0; i < 2; i++ {
			text, err := limited.Recognize(context.Background(), nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("ok"))
		}
		Expect(inner.calls).To(Equal(2))
	})

	It("gives up when the context ends while waiting", func() {
		limited := NewRateLimited(inner, 1, 1)
		_, err := limited.Recognize(context.Background(), nil, "")
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = limited.Recognize(ctx, nil, "")
		Expect(err).To(MatchError(context.Canceled))
		Expect(inner.calls).To(Equal(1))
	})
})
