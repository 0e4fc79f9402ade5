package layout

import "testing"

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name                 string
		maxVisible, selected int
		total                int
		wantStart, wantEnd   int
	}{
		{"fits", 5, 0, 3, 0, 3},
		{"selection within first page", 5, 2, 10, 0, 5},
		{"selection scrolls", 5, 7, 10, 3, 8},
		{"selection at end", 5, 9, 10, 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.selected, tt.total)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleListItems(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.selected, tt.total, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
