package models

import "testing"

func TestResolveStockStatus(t *testing.T) {
	cases := []struct {
		stock int
		want  string
	}{
		{0, StockStatusOut},
		{-1, StockStatusOut},
		{1, StockStatusLow},
		{LowStockThreshold, StockStatusLow},
		{LowStockThreshold + 1, StockStatusIn},
		{100, StockStatusIn},
	}

	for _, tc := range cases {
		p := Product{Stock: tc.stock}
		p.ResolveStockStatus()
		if p.StockStatus != tc.want {
			t.Errorf("stock %d: got %s, want %s", tc.stock, p.StockStatus, tc.want)
		}
	}
}
