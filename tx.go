package piggybank

import (
	"reflect"

	"github.com/iov-one/piggybank/errors"
)

// Msg is a request for the blockchain to make a state transition. It carries
// no authentication data; the signers are taken from the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. The Router uses it to find the
	// handler. Must be alphanumeric with / separators.
	Path() string

	// Validate performs a sanity check of the message content. It does
	// not access any state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as unmarshaling almost always requires
// a pointer, while functions that only need bytes can use non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is the data sent from the user to the chain. It carries the message
// along with whatever the decorators need to authenticate the sender.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning, the message is validated.
//
// Destination must be a pointer to a variable of the message type, for
// example
//
//	var msg goal.CreateMsg
//	if err := piggybank.LoadMsg(tx, &msg); err != nil { ...
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a pointer")
	}

	src := reflect.ValueOf(msg)
	elem := dest.Elem()
	switch {
	case src.Type().AssignableTo(elem.Type()):
		elem.Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(elem.Type()):
		elem.Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", elem.Type(), msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
