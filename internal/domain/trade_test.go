package domain

import (
	"strings"
	"testing"
)

func TestTradeColumns_Order(t *testing.T) {
	got := strings.Join(TradeColumns(), ",")
	want := "slot,timestamp,amount_in,amount_out,tx_signature,token_mint_in,token_mint_out,is_bundled,tx_index"
	if got != want {
		t.Errorf("TradeColumns() = %q, want %q", got, want)
	}
}

func TestTradeRecord_AppendFields(t *testing.T) {
	tests := []struct {
		name   string
		record TradeRecord
		want   []string
	}{
		{
			name: "bundled",
			record: TradeRecord{
				Slot:         200000000,
				Timestamp:    1700000000,
				AmountIn:     1000,
				AmountOut:    1000000,
				TxSignature:  "abc",
				TokenMintIn:  "m1",
				TokenMintOut: "m2",
				IsBundled:    true,
				TxIndex:      0,
			},
			want: []string{"200000000", "1700000000", "1000", "1000000", "abc", "m1", "m2", "true", "0"},
		},
		{
			name: "not bundled",
			record: TradeRecord{
				Slot:         7,
				Timestamp:    8,
				AmountIn:     9,
				AmountOut:    10,
				TxSignature:  "sig",
				TokenMintIn:  "same",
				TokenMintOut: "same",
				TxIndex:      1999,
			},
			want: []string{"7", "8", "9", "10", "sig", "same", "same", "false", "1999"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.AppendFields(nil)
			if len(got) != len(TradeColumns()) {
				t.Fatalf("field count = %d, want %d", len(got), len(TradeColumns()))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field %s = %q, want %q", TradeColumns()[i], got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTradeRecord_AppendFieldsReusesBuffer(t *testing.T) {
	buf := make([]string, 0, 9)
	r := TradeRecord{TxSignature: "x"}

	buf = r.AppendFields(buf[:0])
	buf = r.AppendFields(buf[:0])
	if len(buf) != 9 {
		t.Errorf("len = %d, want 9", len(buf))
	}
}
