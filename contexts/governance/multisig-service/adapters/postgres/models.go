package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"themis/contexts/governance/multisig-service/domain/entities"
	"themis/contexts/governance/multisig-service/ports"
)

func marshalEnvelope(envelope ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(envelope)
}

type accountModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Threshold int       `gorm:"column:threshold"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "governance_accounts"
}

type memberModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Address   string `gorm:"column:address"`
}

func (memberModel) TableName() string {
	return "governance_members"
}

type transactionModel struct {
	AccountID  string     `gorm:"column:account_id;primaryKey"`
	TxID       uint64     `gorm:"column:tx_id;primaryKey"`
	TxType     string     `gorm:"column:tx_type"`
	Status     string     `gorm:"column:status"`
	Proposer   string     `gorm:"column:proposer"`
	Executor   string     `gorm:"column:executor"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	ExecutedAt *time.Time `gorm:"column:executed_at"`
}

func (transactionModel) TableName() string {
	return "governance_transactions"
}

type ballotModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	TxID      uint64 `gorm:"column:tx_id;primaryKey"`
	Support   bool   `gorm:"column:support;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Address   string `gorm:"column:address"`
}

func (ballotModel) TableName() string {
	return "governance_ballots"
}

type voteRecordModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	TxID      uint64 `gorm:"column:tx_id;primaryKey"`
	Address   string `gorm:"column:address;primaryKey"`
}

func (voteRecordModel) TableName() string {
	return "governance_vote_records"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "governance_outbox"
}

func accountRows(account entities.Account) (accountModel, []memberModel, []transactionModel, []ballotModel, []voteRecordModel) {
	accountID := strings.TrimSpace(account.AccountID)
	row := accountModel{
		ID:        accountID,
		Threshold: account.Threshold,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}

	members := make([]memberModel, 0, account.Members.Count)
	for position, address := range account.Members.List() {
		members = append(members, memberModel{
			AccountID: accountID,
			Position:  position,
			Address:   string(address),
		})
	}

	transactions := make([]transactionModel, 0, len(account.Transactions))
	ballots := make([]ballotModel, 0)
	for _, tx := range account.Transactions {
		transactions = append(transactions, transactionModel{
			AccountID:  accountID,
			TxID:       tx.ID,
			TxType:     tx.TxType,
			Status:     string(tx.Status),
			Proposer:   string(tx.Proposer),
			Executor:   string(tx.Executor),
			CreatedAt:  tx.CreatedAt,
			ExecutedAt: tx.ExecutedAt,
		})
		for position, address := range tx.Approved {
			ballots = append(ballots, ballotModel{
				AccountID: accountID,
				TxID:      tx.ID,
				Support:   true,
				Position:  position,
				Address:   string(address),
			})
		}
		for position, address := range tx.Rejected {
			ballots = append(ballots, ballotModel{
				AccountID: accountID,
				TxID:      tx.ID,
				Support:   false,
				Position:  position,
				Address:   string(address),
			})
		}
	}

	votes := make([]voteRecordModel, 0, len(account.Votes))
	for key, voted := range account.Votes {
		if !voted {
			continue
		}
		votes = append(votes, voteRecordModel{
			AccountID: accountID,
			TxID:      key.TransactionID,
			Address:   string(key.Member),
		})
	}

	return row, members, transactions, ballots, votes
}

func assembleAccount(
	row accountModel,
	members []memberModel,
	transactions []transactionModel,
	ballots []ballotModel,
	votes []voteRecordModel,
) entities.Account {
	account := entities.Account{
		AccountID: row.ID,
		Threshold: row.Threshold,
		Votes:     make(map[entities.VoteKey]bool, len(votes)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	slots := make([]entities.Address, len(members))
	for _, member := range members {
		if member.Position >= 0 && member.Position < len(slots) {
			slots[member.Position] = entities.Address(member.Address)
		}
	}
	account.Members = entities.MemberSet{Slots: slots, Count: len(slots)}

	approvedByTx := make(map[uint64][]entities.Address)
	rejectedByTx := make(map[uint64][]entities.Address)
	for _, ballot := range ballots {
		if ballot.Support {
			approvedByTx[ballot.TxID] = append(approvedByTx[ballot.TxID], entities.Address(ballot.Address))
		} else {
			rejectedByTx[ballot.TxID] = append(rejectedByTx[ballot.TxID], entities.Address(ballot.Address))
		}
	}

	account.Transactions = make([]entities.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		account.Transactions = append(account.Transactions, entities.Transaction{
			ID:         tx.TxID,
			TxType:     tx.TxType,
			Status:     entities.TransactionStatus(tx.Status),
			Proposer:   entities.Address(tx.Proposer),
			Executor:   entities.Address(tx.Executor),
			Approved:   approvedByTx[tx.TxID],
			Rejected:   rejectedByTx[tx.TxID],
			CreatedAt:  tx.CreatedAt,
			ExecutedAt: tx.ExecutedAt,
		})
	}

	for _, vote := range votes {
		account.Votes[entities.VoteKey{
			TransactionID: vote.TxID,
			Member:        entities.Address(vote.Address),
		}] = true
	}

	return account
}
