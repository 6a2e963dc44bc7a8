package domain

import "testing"

func mustSpace(t *testing.T, bits, succListSize int) Space {
	t.Helper()
	sp, err := NewSpace(bits, succListSize)
	if err != nil {
		t.Fatalf("NewSpace failed: %v", err)
	}
	return sp
}

func id(t *testing.T, sp Space, hex string) ID {
	t.Helper()
	v, err := sp.FromHexString(hex)
	if err != nil {
		t.Fatalf("FromHexString(%q) failed: %v", hex, err)
	}
	return v
}

func TestBetween(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	tests := []struct {
		name    string
		x, a, b string
		want    bool
	}{
		{"linear inside", "0x32", "0x10", "0x64", true},
		{"linear at a", "0x10", "0x10", "0x64", false},
		{"linear at b", "0x64", "0x10", "0x64", false},
		{"linear outside", "0x70", "0x10", "0x64", false},
		{"wrap inside low", "0x05", "0xf0", "0x10", true},
		{"wrap inside high", "0xf8", "0xf0", "0x10", true},
		{"wrap at a", "0xf0", "0xf0", "0x10", false},
		{"wrap at b", "0x10", "0xf0", "0x10", false},
		{"degenerate not a", "0x20", "0x10", "0x10", true},
		{"degenerate at a", "0x10", "0x10", "0x10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := id(t, sp, tt.x)
			a := id(t, sp, tt.a)
			b := id(t, sp, tt.b)
			if got := x.Between(a, b); got != tt.want {
				t.Errorf("Between(%s,%s,%s) = %v, want %v", tt.x, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBetweenE(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	tests := []struct {
		name    string
		x, a, b string
		want    bool
	}{
		{"linear inside", "0x32", "0x10", "0x64", true},
		{"linear at a", "0x10", "0x10", "0x64", false},
		{"linear at b", "0x64", "0x10", "0x64", true},
		{"wrap at b", "0x10", "0xf0", "0x10", true},
		{"degenerate at a", "0x10", "0x10", "0x10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := id(t, sp, tt.x)
			a := id(t, sp, tt.a)
			b := id(t, sp, tt.b)
			if got := x.BetweenE(a, b); got != tt.want {
				t.Errorf("BetweenE(%s,%s,%s) = %v, want %v", tt.x, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEBetween(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	tests := []struct {
		name    string
		x, a, b string
		want    bool
	}{
		{"linear inside", "0x32", "0x10", "0x64", true},
		{"linear at a", "0x10", "0x10", "0x64", true},
		{"linear at b", "0x64", "0x10", "0x64", false},
		{"wrap at a", "0xf0", "0xf0", "0x10", true},
		{"degenerate at a", "0x10", "0x10", "0x10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := id(t, sp, tt.x)
			a := id(t, sp, tt.a)
			b := id(t, sp, tt.b)
			if got := x.EBetween(a, b); got != tt.want {
				t.Errorf("EBetween(%s,%s,%s) = %v, want %v", tt.x, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFingerStart(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	self := id(t, sp, "0x0a")

	tests := []struct {
		k    int
		want string
	}{
		{0, "0b"},  // 10 + 1
		{1, "0c"},  // 10 + 2
		{2, "0e"},  // 10 + 4
		{3, "12"},  // 10 + 8
		{7, "8a"},  // 10 + 128
	}
	for _, tt := range tests {
		got, err := sp.FingerStart(self, tt.k)
		if err != nil {
			t.Fatalf("FingerStart(%d) failed: %v", tt.k, err)
		}
		if got.ToHexString(false) != tt.want {
			t.Errorf("FingerStart(%d) = %s, want %s", tt.k, got.ToHexString(false), tt.want)
		}
	}
}

func TestFingerStartWrap(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	self := id(t, sp, "0xfe")
	got, err := sp.FingerStart(self, 0) // 254 + 1 = 255
	if err != nil {
		t.Fatal(err)
	}
	if got.ToHexString(false) != "ff" {
		t.Errorf("FingerStart(0) = %s, want ff", got.ToHexString(false))
	}
	got, err = sp.FingerStart(self, 1) // 254 + 2 = 256 mod 256 = 0
	if err != nil {
		t.Fatal(err)
	}
	if got.ToHexString(false) != "00" {
		t.Errorf("FingerStart(1) = %s, want 00", got.ToHexString(false))
	}
}

func TestFingerStartOutOfRange(t *testing.T) {
	sp := mustSpace(t, 8, 3)
	self := id(t, sp, "0x0a")
	if _, err := sp.FingerStart(self, 8); err == nil {
		t.Error("expected error for out-of-range finger index")
	}
	if _, err := sp.FingerStart(self, -1); err == nil {
		t.Error("expected error for negative finger index")
	}
}
