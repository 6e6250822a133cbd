package models

import "testing"

func TestStageIndex(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   int
	}{
		{name: "pending", status: StatusPending, want: 0},
		{name: "paid", status: StatusPaid, want: 1},
		{name: "cooking", status: StatusCooking, want: 2},
		{name: "ready", status: StatusReady, want: 3},
		{name: "completed", status: StatusCompleted, want: 4},
		{name: "unrecognized status falls back to first stage", status: OrderStatus("Refunded"), want: 0},
		{name: "empty status falls back to first stage", status: OrderStatus(""), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StageIndex(tt.status); got != tt.want {
				t.Errorf("StageIndex(%q) = %d, want %d", tt.status, got, tt.want)
			}
		})
	}
}

func TestFindMenuItem(t *testing.T) {
	truck := Truck{
		MenuCategories: []MenuCategory{
			{ID: 1, Name: "Mains", MenuItems: []MenuItem{{ID: 10, Name: "Burger"}}},
			{ID: 2, Name: "Sides", MenuItems: []MenuItem{{ID: 20, Name: "Fries"}}},
		},
	}

	if item, ok := truck.FindMenuItem(20); !ok || item.Name != "Fries" {
		t.Errorf("FindMenuItem(20) = %+v, %v", item, ok)
	}
	if _, ok := truck.FindMenuItem(99); ok {
		t.Errorf("FindMenuItem(99) should not be found")
	}
}
