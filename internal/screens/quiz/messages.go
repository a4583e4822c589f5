package quiz

import (
	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// bankLoadedMsg is sent once the startup load finishes.
type bankLoadedMsg struct {
	Questions []bank.Question
	Wrong     wrongset.Set
	Err       error
}
