package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ErrorClassPermanent},
		{"serialization", &pq.Error{Code: "40001"}, ErrorClassSerialization},
		{"deadlock", fmt.Errorf("save: %w", &pq.Error{Code: "40P01"}), ErrorClassDeadlock},
		{"lock not available", &pq.Error{Code: "55P03"}, ErrorClassTransient},
		{"connection failure", &pq.Error{Code: "08006"}, ErrorClassTransient},
		{"bad conn", driver.ErrBadConn, ErrorClassTransient},
		{"qty check", &pq.Error{Code: "23514"}, ErrorClassPermanent},
		{"bad uuid", &pq.Error{Code: "22P02"}, ErrorClassPermanent},
		{"no rows", sql.ErrNoRows, ErrorClassPermanent},
		{"other", errors.New("boom"), ErrorClassPermanent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyError(tc.err); got != tc.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&pq.Error{Code: "40P01"}) {
		t.Error("Expected deadlock to be retryable")
	}
	if IsRetryable(&pq.Error{Code: "23505"}) {
		t.Error("Expected unique violation not to be retryable")
	}
}
