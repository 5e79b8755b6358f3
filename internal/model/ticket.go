package model

import "time"

// Ticket is the local mirror of a minted token. The chain is the source of
// truth for ownership; this row is a snapshot taken at mint time and is never
// updated when the token is transferred off-platform.
type Ticket struct {
	ID                 int       `json:"id" db:"id"`
	TokenID            int64     `json:"token_id" db:"token_id"`
	EventID            int       `json:"event_id" db:"event_id"`
	OwnerWalletAddress string    `json:"owner_wallet_address" db:"owner_wallet_address"`
	TxHash             string    `json:"tx_hash" db:"tx_hash"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	Event *Event `json:"event,omitempty" db:"-"`
}

type PurchaseResult struct {
	TxHash   string `json:"tx_hash"`
	TokenID  int64  `json:"token_id"`
	TokenURI string `json:"token_uri"`
}

// TransferEntry is one hop of a token's on-chain transfer history, in block
// order. The first entry of a minted token has From equal to the zero address.
type TransferEntry struct {
	From        string `json:"from"`
	To          string `json:"to"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
}

// MetadataAttribute follows the ERC721 metadata trait convention.
type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type TicketMetadata struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

type CategorySales struct {
	Category    string `json:"category"`
	TicketsSold int    `json:"tickets_sold"`
}
