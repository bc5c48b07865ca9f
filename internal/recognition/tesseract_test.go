package recognition

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("locateTesseract", func() {
	var (
		found    map[string]string
		goos     string
		onDisk   bool
		lookPath func(string) (string, error)
		exists   func(string) bool
	)

	BeforeEach(func() {
		found = map[string]string{}
		goos = "linux"
		onDisk = false
		lookPath = func(name string) (string, error) {
			if p, ok := found[name]; ok {
				return p, nil
			}
			return "", errors.New("not found")
		}
		exists = func(string) bool { return onDisk }
	})

	When("a configured path resolves", func() {
		It("uses it", func() {
			found["/opt/tess/bin/tesseract"] = "/opt/tess/bin/tesseract"
			found["tesseract"] = "/usr/bin/tesseract"
			cfg := locateTesseract("/opt/tess/bin/tesseract", "", lookPath, goos, exists)
			Expect(cfg.Path).To(Equal("/opt/tess/bin/tesseract"))
			Expect(cfg.Language).To(Equal(DefaultTesseractLanguage))
		})
	})

	When("a configured path does not resolve", func() {
		It("is unavailable rather than falling back", func() {
			found["tesseract"] = "/usr/bin/tesseract"
			cfg := locateTesseract("/missing/tesseract", "por", lookPath, goos, exists)
			Expect(cfg.Available()).To(BeFalse())
		})
	})

	When("tesseract is on PATH", func() {
		It("uses the PATH entry", func() {
			found["tesseract"] = "/usr/bin/tesseract"
			cfg := locateTesseract("", "por+eng", lookPath, goos, exists)
			Expect(cfg.Path).To(Equal("/usr/bin/tesseract"))
			Expect(cfg.Language).To(Equal("por+eng"))
		})
	})

	When("running on Windows without PATH entry", func() {
		BeforeEach(func() {
			goos = "windows"
		})

		It("falls back to the default install location", func() {
			onDisk = true
			cfg := locateTesseract("", "", lookPath, goos, exists)
			Expect(cfg.Path).To(Equal(windowsTesseractPath))
		})

		It("is unavailable when not installed", func() {
			cfg := locateTesseract("", "", lookPath, goos, exists)
			Expect(cfg.Available()).To(BeFalse())
		})
	})

	When("nothing is found on Linux", func() {
		It("is unavailable", func() {
			onDisk = true
			Expect(locateTesseract("", "", lookPath, goos, exists).Available()).To(BeFalse())
		})
	})
})

var _ = Describe("Tesseract", func() {
	When("the configuration is unavailable", func() {
		It("refuses to construct", func() {
			_, err := NewTesseract(TesseractConfig{Language: "por"})
			Expect(err).To(MatchError(ErrRecognizerUnavailable))
		})
	})

	Describe("Recognize", func() {
		var (
			tess *Tesseract
			text string
			data []byte
			err  error
		)

		BeforeEach(func() {
			if runtime.GOOS == "windows" {
				Skip("fake tesseract is a shell script")
			}
			script := filepath.Join(GinkgoT().TempDir(), "tesseract")
			Expect(os.WriteFile(script, []byte("#!/bin/sh\ncat > /dev/null\necho \"args: $*\"\necho 'R$ 10,00'\n"), 0755)).To(Succeed())

			var newErr error
			tess, newErr = NewTesseract(TesseractConfig{Path: script, Language: "por"})
			Expect(newErr).NotTo(HaveOccurred())
			data = testPNG()
		})

		JustBeforeEach(func() {
			text, err = tess.Recognize(context.Background(), data, "image/png")
		})

		It("returns the recognized text", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(ContainSubstring("R$ 10,00"))
		})

		It("reads stdin and asks for Portuguese", func() {
			Expect(text).To(ContainSubstring("args: stdin stdout -l por"))
		})

		When("the image is corrupt", func() {
			BeforeEach(func() {
				data = []byte("garbage")
			})

			It("does not run tesseract", func() {
				Expect(err).To(MatchError(ErrUndecodable))
			})
		})
	})
})
