package domain

import "fmt"

// Conversational message catalog. Patient-facing text lives here so the
// engine never emits raw technical diagnostics at a user.
const (
	MsgGreeting = "Olá! Entendo como isso pode ser desconfortável. Qual é a sua queixa principal?"

	MsgClassificationError = "Sinto muito, não consegui identificar o domínio. Poderia explicar melhor?"

	MsgSymptomPrompt = "Marque os sintomas que você está sentindo e informe sua dor."

	MsgAnswerNotUnderstood = "Por favor, responda usando uma das opções apresentadas."

	MsgEscalationAdvice = "Recomendamos avaliação presencial com um especialista o quanto antes."

	MsgSchedulingPrompt = "Deseja agendar uma avaliação?"
)

// MsgDomainIdentified announces the classified domain.
func MsgDomainIdentified(label string) string {
	return fmt.Sprintf("Domínio identificado: %s.", label)
}
