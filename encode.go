package hisab

import "encoding/json"

// UnmarshalJSON accepts the status labels leniently. Unknown labels are kept as is.
func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	if st, err := ParseOrderStatus(str); err == nil {
		*s = st
		return nil
	}
	*s = OrderStatus(str)
	return nil
}

// UnmarshalJSON accepts the type in any case.
func (t *TransactionType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	if tt, err := ParseTransactionType(str); err == nil {
		*t = tt
		return nil
	}
	*t = TransactionType(str)
	return nil
}
