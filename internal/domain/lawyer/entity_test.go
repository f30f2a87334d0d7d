package lawyer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/LexConnect/pkg/errors"
)

func validLawyer() *Lawyer {
	return &Lawyer{
		ID:             "l-1",
		Name:           "Adv. Meera Rawat",
		Specialization: "Criminal",
		SubSpecialty:   "Murder / Homicide Cases",
		Experience:     12,
		Location:       "Dehradun",
		Fee:            1500,
	}
}

func TestLawyer_Validate(t *testing.T) {
	assert.NoError(t, validLawyer().Validate())

	cases := []struct {
		name   string
		mutate func(l *Lawyer)
		code   errors.ErrorCode
	}{
		{"blank name", func(l *Lawyer) { l.Name = "  " }, errors.ErrCodeLawyerInvalid},
		{"fine-grained specialization", func(l *Lawyer) { l.Specialization = "Criminal Law" }, errors.ErrCodeSpecializationUnknown},
		{"negative experience", func(l *Lawyer) { l.Experience = -1 }, errors.ErrCodeLawyerInvalid},
		{"zero fee", func(l *Lawyer) { l.Fee = 0 }, errors.ErrCodeLawyerInvalid},
		{"no location", func(l *Lawyer) { l.Location = "" }, errors.ErrCodeLawyerInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validLawyer()
			tc.mutate(l)
			assert.True(t, errors.IsCode(l.Validate(), tc.code))
		})
	}
}

func TestLawyer_OptionalFieldsMayBeEmpty(t *testing.T) {
	l := validLawyer()
	l.SubSpecialty = ""
	l.About = ""
	assert.NoError(t, l.Validate())
}

//Personal.AI order the ending
