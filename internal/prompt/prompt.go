// Package prompt renders the translation instruction sent to the model for
// a single chunk.
package prompt

import (
	"fmt"

	"github.com/vkozyrev/gemmatran/internal"
)

// template is the instruction layout required by the TranslateGemma model
// family. The two blank lines between the instruction and the chunk text
// are part of the protocol and must not be altered.
const template = `You are a professional %[1]s (%[2]s) to %[3]s (%[4]s) translator. Your goal is to accurately convey the meaning and nuances of the original %[1]s text while adhering to %[3]s grammar, vocabulary, and cultural sensitivities.
Produce only the %[3]s translation, without any additional explanations or commentary. Please translate the following %[1]s text into %[3]s:


%[5]s`

// Build renders the prompt for one chunk. It is pure string substitution;
// the chunk text is embedded verbatim.
func Build(source, target internal.Language, text string) string {
	return fmt.Sprintf(template, source.Name, source.Code, target.Name, target.Code, text)
}
