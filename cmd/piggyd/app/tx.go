package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/x/goal"
	"github.com/iov-one/piggybank/x/sigs"
	"github.com/iov-one/piggybank/x/timelock"
	"github.com/iov-one/piggybank/x/token"
)

// Tx is the transaction format of the piggy bank node. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	TokenInitializeMsg    *token.InitializeMsg    `protobuf:"bytes,51,opt,name=token_initialize_msg,json=tokenInitializeMsg,proto3" json:"token_initialize_msg,omitempty"`
	TokenMintMsg          *token.MintMsg          `protobuf:"bytes,52,opt,name=token_mint_msg,json=tokenMintMsg,proto3" json:"token_mint_msg,omitempty"`
	GoalCreateMsg         *goal.CreateMsg         `protobuf:"bytes,61,opt,name=goal_create_msg,json=goalCreateMsg,proto3" json:"goal_create_msg,omitempty"`
	GoalContributeMsg     *goal.ContributeMsg     `protobuf:"bytes,62,opt,name=goal_contribute_msg,json=goalContributeMsg,proto3" json:"goal_contribute_msg,omitempty"`
	TimelockInitializeMsg *timelock.InitializeMsg `protobuf:"bytes,71,opt,name=timelock_initialize_msg,json=timelockInitializeMsg,proto3" json:"timelock_initialize_msg,omitempty"`
	TimelockDepositMsg    *timelock.DepositMsg    `protobuf:"bytes,72,opt,name=timelock_deposit_msg,json=timelockDepositMsg,proto3" json:"timelock_deposit_msg,omitempty"`
	TimelockWithdrawMsg   *timelock.WithdrawMsg   `protobuf:"bytes,73,opt,name=timelock_withdraw_msg,json=timelockWithdrawMsg,proto3" json:"timelock_withdraw_msg,omitempty"`
}

type txPb Tx

func (*txPb) ProtoMessage()    {}
func (m *txPb) Reset()         { *m = txPb{} }
func (m *txPb) String() string { return proto.CompactTextString(m) }

func (tx *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txPb)(tx)) }
func (tx *Tx) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*txPb)(tx)) }

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (piggybank.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ piggybank.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (piggybank.Msg, error) {
	var msgs []piggybank.Msg
	if tx.TokenInitializeMsg != nil {
		msgs = append(msgs, tx.TokenInitializeMsg)
	}
	if tx.TokenMintMsg != nil {
		msgs = append(msgs, tx.TokenMintMsg)
	}
	if tx.GoalCreateMsg != nil {
		msgs = append(msgs, tx.GoalCreateMsg)
	}
	if tx.GoalContributeMsg != nil {
		msgs = append(msgs, tx.GoalContributeMsg)
	}
	if tx.TimelockInitializeMsg != nil {
		msgs = append(msgs, tx.TimelockInitializeMsg)
	}
	if tx.TimelockDepositMsg != nil {
		msgs = append(msgs, tx.TimelockDepositMsg)
	}
	if tx.TimelockWithdrawMsg != nil {
		msgs = append(msgs, tx.TimelockWithdrawMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(msgs))
	}
}

// SetMsg sets the field matching the type of given message.
func (tx *Tx) SetMsg(msg piggybank.Msg) error {
	switch m := msg.(type) {
	case *token.InitializeMsg:
		tx.TokenInitializeMsg = m
	case *token.MintMsg:
		tx.TokenMintMsg = m
	case *goal.CreateMsg:
		tx.GoalCreateMsg = m
	case *goal.ContributeMsg:
		tx.GoalContributeMsg = m
	case *timelock.InitializeMsg:
		tx.TimelockInitializeMsg = m
	case *timelock.DepositMsg:
		tx.TimelockDepositMsg = m
	case *timelock.WithdrawMsg:
		tx.TimelockWithdrawMsg = m
	default:
		return errors.WithType(errors.ErrType, msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}
