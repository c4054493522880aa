// Package author builds FastForm form definitions interactively. The Wizard
// talks to a PromptDriver; NewSurveyDriver provides the terminal
// implementation and tests supply scripted drivers.
package author
