package service

import (
	"encoding/json"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/hypersdk/orchestrator/internal/domain/model"
	apperrors "github.com/hypersdk/orchestrator/internal/errors"
)

// JMESPathEvaluator validates and evaluates JMESPath expressions against job
// listings. Abstracted so tests can substitute a failing evaluator.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if expr == "" {
		return apperrors.Validation("query expression cannot be empty")
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// DefaultEvaluator returns the library-backed JMESPath evaluator.
func DefaultEvaluator() JMESPathEvaluator {
	return jmespathLibEvaluator{}
}

// FilterJobs applies a JMESPath expression to a job list and returns the
// matching result. Jobs cross through their JSON representation so the
// expression sees the same field names the wire uses.
func FilterJobs(jobs []model.Job, expression string) (any, error) {
	return FilterJobsWith(jmespathLibEvaluator{}, jobs, expression)
}

// FilterJobsWith is FilterJobs with an explicit evaluator.
func FilterJobsWith(eval JMESPathEvaluator, jobs []model.Job, expression string) (any, error) {
	if expression == "" {
		return jobs, nil
	}
	if err := eval.Validate(expression); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid query expression %q", expression)
	}

	data, err := json.Marshal(jobs)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to encode jobs for query")
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to decode jobs for query")
	}

	result, err := eval.Evaluate(expression, generic)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "query expression failed")
	}
	return result, nil
}
