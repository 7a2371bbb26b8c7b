package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// Prompter implements the Presenter port over stdio.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// PresentMessage renders one bot message.
func (p *Prompter) PresentMessage(text string) {
	fmt.Fprintf(p.out, "Triagem: %s\n", text)
}

// PresentOptions renders quick replies and reads a selection. The user may
// type either the option number or the option text; with no labels it reads
// free text. Vocabulary enforcement belongs to the engine, so unrecognized
// input is returned as typed.
func (p *Prompter) PresentOptions(question string, labels []string) (string, error) {
	if question != "" {
		fmt.Fprintf(p.out, "Triagem: %s\n", question)
	}
	for i, label := range labels {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, label)
	}
	fmt.Fprint(p.out, "Você: ")

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(labels) {
		return labels[n-1], nil
	}
	return line, nil
}

// PresentForm renders the symptom checklist and pain scale, returning the
// structured submission. Symptoms are entered as comma-separated numbers;
// empty input means no symptoms checked.
func (p *Prompter) PresentForm(form domain.SymptomForm) (domain.FormSubmission, error) {
	fmt.Fprintf(p.out, "Triagem: %s\n", form.Prompt)
	for i, choice := range form.Choices {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, choice)
	}
	fmt.Fprint(p.out, "Sintomas (números separados por vírgula): ")
	line, err := p.readLine()
	if err != nil {
		return domain.FormSubmission{}, err
	}

	var submission domain.FormSubmission
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, convErr := strconv.Atoi(part); convErr == nil && n >= 1 && n <= len(form.Choices) {
			submission.Symptoms = append(submission.Symptoms, form.Choices[n-1])
		}
	}

	for {
		fmt.Fprintf(p.out, "%s [%d-%d]: ", form.PainLabel, form.PainMin, form.PainMax)
		line, err = p.readLine()
		if err != nil {
			return domain.FormSubmission{}, err
		}
		score, convErr := strconv.Atoi(line)
		if convErr == nil && score >= form.PainMin && score <= form.PainMax {
			submission.PainScore = score
			return submission, nil
		}
		fmt.Fprintln(p.out, "Valor fora da escala, tente novamente.")
	}
}

// Confirm asks a simple yes/no question in Portuguese ("s" confirms).
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [s/N]: ", question)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "s" || line == "sim", nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var _ ports.Presenter = (*Prompter)(nil)
