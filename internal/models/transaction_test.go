package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionKeys(t *testing.T) {
	withBankID := Transaction{BankID: "TX123", Date: "2023-12-25T00:00:00Z", Amount: -23.99, Description: "CONAD"}
	withoutBankID := Transaction{Date: "2023-12-25T00:00:00Z", Amount: -23.99, Description: "CONAD"}

	assert.Equal(t, "bank:TX123", withBankID.ExactKey())
	assert.Equal(t, withoutBankID.TripleKey(), withoutBankID.ExactKey())

	// The triple key is identical regardless of the bank id, so the two
	// variants of the same movement can still collide.
	assert.Equal(t, withBankID.TripleKey(), withoutBankID.TripleKey())

	assert.Equal(t, "2023-12-25T00:00:00Z|-23.99", withBankID.PairKey())
}

func TestParsedDate(t *testing.T) {
	rfc := Transaction{Date: "2023-12-25T00:00:00Z"}
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), rfc.ParsedDate())

	plain := Transaction{Date: "2023-12-25"}
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), plain.ParsedDate())

	broken := Transaction{Date: "yesterday"}
	assert.True(t, broken.ParsedDate().IsZero())
}
