package question

import (
	"errors"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// repoFailure maps repository errors to failure codes.
func repoFailure[T any](err error) appcore.Result[T] {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return appcore.Failure[T](appcore.CodeNotFound, "question not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		return appcore.Failure[T](appcore.CodeDuplicate, "question already exists")
	default:
		return appcore.Failure[T](appcore.CodeConnection, "question storage unavailable: "+err.Error())
	}
}
