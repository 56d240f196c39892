package domain

import "strconv"

// TradeRecord represents one synthetic DEX trade row of a generated fixture.
// Corresponds to trade_fixtures table and to one CSV data line.
type TradeRecord struct {
	Slot         int64  // base_slot + index / slot_size
	Timestamp    int64  // base_timestamp + index
	AmountIn     int64  // uniform in [amount_min, amount_max]
	AmountOut    int64  // uniform in [amount_min, amount_max]
	TxSignature  string // truncated hex digest of the row index
	TokenMintIn  string // sampled from the identifier pool
	TokenMintOut string // sampled from the identifier pool
	IsBundled    bool   // Bernoulli(bundled_probability)
	TxIndex      int    // index mod tx_index_cycle
}

// Column names in output order. Downstream consumers bind by these.
const (
	ColumnSlot         = "slot"
	ColumnTimestamp    = "timestamp"
	ColumnAmountIn     = "amount_in"
	ColumnAmountOut    = "amount_out"
	ColumnTxSignature  = "tx_signature"
	ColumnTokenMintIn  = "token_mint_in"
	ColumnTokenMintOut = "token_mint_out"
	ColumnIsBundled    = "is_bundled"
	ColumnTxIndex      = "tx_index"
)

// TradeColumns returns the header row of a trade fixture.
func TradeColumns() []string {
	return []string{
		ColumnSlot,
		ColumnTimestamp,
		ColumnAmountIn,
		ColumnAmountOut,
		ColumnTxSignature,
		ColumnTokenMintIn,
		ColumnTokenMintOut,
		ColumnIsBundled,
		ColumnTxIndex,
	}
}

// AppendFields appends the textual encoding of t to dst in column order.
// Integers are base-10, booleans are "true"/"false".
func (t *TradeRecord) AppendFields(dst []string) []string {
	return append(dst,
		strconv.FormatInt(t.Slot, 10),
		strconv.FormatInt(t.Timestamp, 10),
		strconv.FormatInt(t.AmountIn, 10),
		strconv.FormatInt(t.AmountOut, 10),
		t.TxSignature,
		t.TokenMintIn,
		t.TokenMintOut,
		strconv.FormatBool(t.IsBundled),
		strconv.Itoa(t.TxIndex),
	)
}
