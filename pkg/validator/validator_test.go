package validator

import "testing"

type sample struct {
	Email  string `validate:"required,email"`
	Type   string `validate:"omitempty,meetingtype"`
	Marker string `validate:"omitempty,markertype"`
	Status string `validate:"omitempty,meetingstatus"`
}

func TestValidateCustomTags(t *testing.T) {
	v := New()

	ok := sample{Email: "user@example.com", Type: "DAILY", Marker: "ACTION_ITEM", Status: "RECORDING"}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	cases := []sample{
		{Email: "not-an-email"},
		{Email: "user@example.com", Type: "STANDUP"},
		{Email: "user@example.com", Marker: "BOOKMARK"},
		{Email: "user@example.com", Status: "PAUSED"},
	}
	for i, c := range cases {
		if err := v.Validate(c); err == nil {
			t.Errorf("case %d should fail validation", i)
		}
	}
}
