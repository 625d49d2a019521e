package hisab

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		money Money
		want  string
	}{
		{BDT(1500), "৳1,500.00"},
		{M(12.5, Dollar), "$12.50"},
		{M(3, ""), "3.00"},
	}
	for _, tc := range testCases {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.money.Decimal(), got, tc.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := BDT(10).Add(M(5, "")); !got.Equal(BDT(15)) {
		t.Errorf("weak currency Add() = %v, want 15 BDT", got)
	}
	if got := BDT(120).Mul(Q(10)); !got.Equal(BDT(1200)) {
		t.Errorf("Mul() = %v, want 1200", got)
	}
	if got := BDT(100).Div(Q(0)); !got.IsZero() {
		t.Errorf("Div(0) = %v, want 0", got)
	}
	if got := BDT(100).DivPrice(BDT(0)); !got.IsZero() {
		t.Errorf("DivPrice(0) = %v, want 0", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Add() across currencies did not panic")
		}
	}()
	BDT(1).Add(M(1, Dollar))
}

func TestMoney_JSON(t *testing.T) {
	testCases := []struct {
		input string
		want  Money
	}{
		{`1500`, BDT(1500)},
		{`"1500.25"`, BDT(1500.25)},
		{`null`, BDT(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			var got Money
			if err := json.Unmarshal([]byte(tc.input), &got); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("json.Unmarshal(%s) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}

	data, err := json.Marshal(BDT(99.5))
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if string(data) != "99.5" {
		t.Errorf("json.Marshal() = %s, want 99.5", data)
	}
}

func TestParseMoney(t *testing.T) {
	if m, err := ParseMoney("1200.5"); err != nil || !m.Equal(BDT(1200.5)) {
		t.Errorf("ParseMoney(1200.5) = %v, %v", m, err)
	}
	if _, err := ParseMoney("NaN"); err == nil {
		t.Errorf("ParseMoney(NaN) succeeded, want an error")
	}
	if _, err := ParseQuantity("ten"); err == nil {
		t.Errorf("ParseQuantity(ten) succeeded, want an error")
	}
}
