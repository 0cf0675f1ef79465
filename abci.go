package piggybank

import (
	"fmt"

	"github.com/iov-one/piggybank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverOrError returns an abci response for DeliverTx, converting the error
// message if present, or using the successful DeliverResult.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns an abci response for CheckTx, converting the error
// message if present, or using the successful CheckResult.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverResult captures any non-error abci result to make sure people use
// error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Tags, if present, will be used by tendermint to index and search the
	// transaction history.
	Tags []common.KVPair
	// Events are the notifications produced by the state transition. They
	// are published only after the block that contains the transaction
	// is committed.
	Events []Event
	// GasUsed is currently unused field until effects in tendermint are
	// clear.
	GasUsed int64
}

// ToABCI converts our internal type into an abci response. Every event is
// additionally exposed as an "event" tag so that transactions can be
// searched by the kind of notification they produced.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	tags := append([]common.KVPair(nil), d.Tags...)
	for _, e := range d.Events {
		tags = append(tags, common.KVPair{
			Key:   []byte(EventTagKey),
			Value: []byte(e.EventKind()),
		})
	}
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult captures any non-error abci result to make sure people use
// error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to
	// perform.
	GasAllocated int64
}

// NewCheck sets the gas allocated and the log but no more info.
func NewCheck(gasAllocated int64, log string) CheckResult {
	return CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// ToABCI converts our internal type into an abci response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError converts any error into a abci.ResponseDeliverTx, preserving
// as much info as possible.
// When in debug mode always the full error information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError converts any error into a abci.ResponseCheckTx, preserving as
// much info as possible.
// When in debug mode always the full error information is returned.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
