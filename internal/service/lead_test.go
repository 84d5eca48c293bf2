package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeadService(t *testing.T) (*LeadService, *fakeSellerLeadRepo, *fakeInvestorLeadRepo) {
	t.Helper()

	sellerLeads := newFakeSellerLeadRepo()
	investorLeads := newFakeInvestorLeadRepo()
	s := NewLeadService(sellerLeads, investorLeads, newTestEmailService())
	return s, sellerLeads, investorLeads
}

func validSellerInput() SellerLeadInput {
	return SellerLeadInput{
		PropertyAddress: "123 Main St, Phoenix, AZ",
		Timeline:        "asap",
		Condition:       "needs-work",
		Reason:          "relocation",
		Name:            "Pat Seller",
		Contact:         "pat@example.com",
	}
}

func TestSubmitSellerLead(t *testing.T) {
	t.Run("valid submission persists", func(t *testing.T) {
		s, sellerLeads, _ := newTestLeadService(t)

		lead, err := s.SubmitSellerLead(validSellerInput())
		require.NoError(t, err)
		assert.NotEmpty(t, lead.ID)

		stored, err := sellerLeads.ByID(lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "123 Main St, Phoenix, AZ", stored.PropertyAddress)
	})

	t.Run("markup is stripped before validation", func(t *testing.T) {
		s, _, _ := newTestLeadService(t)

		input := validSellerInput()
		input.Name = "Pat <script>alert(1)</script>"

		lead, err := s.SubmitSellerLead(input)
		require.NoError(t, err)
		assert.NotContains(t, lead.Name, "<")
		assert.NotContains(t, lead.Name, ">")
	})

	t.Run("resubmission creates an independent row", func(t *testing.T) {
		s, sellerLeads, _ := newTestLeadService(t)

		first, err := s.SubmitSellerLead(validSellerInput())
		require.NoError(t, err)
		second, err := s.SubmitSellerLead(validSellerInput())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, sellerLeads.leads, 2)
	})

	invalid := []struct {
		name   string
		mutate func(*SellerLeadInput)
	}{
		{"address too short", func(i *SellerLeadInput) { i.PropertyAddress = "abc" }},
		{"address too long", func(i *SellerLeadInput) { i.PropertyAddress = strings.Repeat("a", 501) }},
		{"missing timeline", func(i *SellerLeadInput) { i.Timeline = "" }},
		{"missing condition", func(i *SellerLeadInput) { i.Condition = "" }},
		{"missing reason", func(i *SellerLeadInput) { i.Reason = "" }},
		{"missing name", func(i *SellerLeadInput) { i.Name = "" }},
		{"name too long", func(i *SellerLeadInput) { i.Name = strings.Repeat("a", 101) }},
		{"contact too short", func(i *SellerLeadInput) { i.Contact = "ab" }},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			s, sellerLeads, _ := newTestLeadService(t)

			input := validSellerInput()
			tt.mutate(&input)

			_, err := s.SubmitSellerLead(input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Empty(t, sellerLeads.leads, "invalid input must not persist")
		})
	}
}

func TestSubmitInvestorLead(t *testing.T) {
	s, _, investorLeads := newTestLeadService(t)

	lead, err := s.SubmitInvestorLead(InvestorLeadInput{
		Name:   "Alex Investor",
		Email:  "Alex@Example.com",
		Metros: "Phoenix, Tucson",
		BuyBox: "SFR under 300k",
	})
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", lead.Email)

	all, err := investorLeads.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	t.Run("missing metros", func(t *testing.T) {
		_, err := s.SubmitInvestorLead(InvestorLeadInput{Name: "A", Email: "a@b.co", BuyBox: "x"})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := s.SubmitInvestorLead(InvestorLeadInput{Name: "A", Email: "not-an-email", Metros: "x", BuyBox: "y"})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
