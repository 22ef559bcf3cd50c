package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionBank     = "bank"
	actionResume   = "resume"
	actionChoice   = "choice"
	actionNav      = "nav"
	actionRead     = "read"
	actionSettings = "settings"
)

// Resume sub-actions.
const (
	resumeYes = "yes"
	resumeNo  = "no"
)

// Navigation sub-actions.
const (
	navNext    = "next"
	navPrev    = "prev"
	navCurrent = "current"
)

// Settings sub-actions.
const (
	settingsAnswer = "answer"
	settingsRate   = "rate"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "" when absent.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildBankCallback builds callback data for selecting the bank at 1-based position n.
func buildBankCallback(n int) string {
	return callbackData{
		Action: actionBank,
		Params: []string{strconv.Itoa(n)},
	}.encode()
}

func buildResumeCallback(choice string) string {
	return callbackData{
		Action: actionResume,
		Params: []string{choice},
	}.encode()
}

// buildChoiceCallback builds callback data for answering the question at cursor.
// The cursor lets stale keyboards be detected.
func buildChoiceCallback(cursor, index int) string {
	return callbackData{
		Action: actionChoice,
		Params: []string{strconv.Itoa(cursor), strconv.Itoa(index)},
	}.encode()
}

func buildNavCallback(direction string) string {
	return callbackData{
		Action: actionNav,
		Params: []string{direction},
	}.encode()
}

func buildReadCallback() string {
	return actionRead
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}
