package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Fatal("clamp low failed")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Fatal("clamp high failed")
	}
	if Clamp(7, 0, 10) != 7 {
		t.Fatal("clamp mid failed")
	}
	if Clamp(uint8(3), 10, 0) != 3 {
		t.Fatal("swapped bounds failed")
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Fatal("int min/max failed")
	}
	if Max(uint8(8), 16) != 16 {
		t.Fatal("uint8 max failed")
	}
}
