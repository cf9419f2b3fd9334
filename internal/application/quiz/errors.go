package quiz

import (
	"errors"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// repoFailure maps repository errors to failure codes. Unknown errors are
// treated as infrastructure faults so the retry policy can classify them.
func repoFailure[T any](err error) appcore.Result[T] {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return appcore.Failure[T](appcore.CodeNotFound, "quiz not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		return appcore.Failure[T](appcore.CodeDuplicate, "quiz already exists")
	default:
		return appcore.Failure[T](appcore.CodeConnection, "quiz storage unavailable: "+err.Error())
	}
}
