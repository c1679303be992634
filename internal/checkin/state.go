package checkin

import "fmt"

// State - шаг сессии отметки
type State int

const (
	StateAwaitingPermissions State = iota
	StateChoosingMethod
	StateScanningID
	StateConfirmingID
	StateCapturingSelfie
	StateAcquiringLocation
	StateReadyToSubmit
	StateCompleted
	// StateAborted - оператор отменил сессию, ничего не сохранено
	StateAborted
	// StateFailed - запись не удалось сохранить, сессия завершена с ошибкой
	StateFailed
)

var stateNames = map[State]string{
	StateAwaitingPermissions: "awaiting_permissions",
	StateChoosingMethod:      "choosing_method",
	StateScanningID:          "scanning_id",
	StateConfirmingID:        "confirming_id",
	StateCapturingSelfie:     "capturing_selfie",
	StateAcquiringLocation:   "acquiring_location",
	StateReadyToSubmit:       "ready_to_submit",
	StateCompleted:           "completed",
	StateAborted:             "aborted",
	StateFailed:              "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal сообщает, что переходов из состояния больше нет
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted || s == StateFailed
}
