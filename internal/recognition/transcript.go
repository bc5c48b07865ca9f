package recognition

import "strings"

// transcribePrompt is the shared prompt used by the vision-model back ends.
// The models act as a plain OCR engine; field extraction happens afterwards
// on the returned text, exactly as it does for tesseract output.
const transcribePrompt = `You are an OCR engine reading a Brazilian Pix payment receipt ("comprovante").

Transcribe ALL text visible in the image, in Portuguese, exactly as printed:
- Keep the original line breaks, one printed line per output line
- Keep amounts exactly as printed, e.g. "R$ 1.234,56"
- Keep dates exactly as printed, e.g. "05 MAR 2024"
- Keep labels such as "Origem", "Destino", "Nome", "CPF", "Instituição" verbatim
- Do not translate, summarize, correct or reorder anything
- Do not add commentary, markdown or code blocks`

// cleanTranscript strips the markdown code fences vision models sometimes
// wrap around their answer despite the prompt.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop an info string such as "text" or "plaintext" on the opening fence
	if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.ContainsAny(text[:i], " \t") {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
