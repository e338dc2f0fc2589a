package support

import "strings"

// FAQ is one entry of the frequently-asked-questions list.
type FAQ struct {
	Question string
	Answer   string
}

// TeamMember is one support staff contact card.
type TeamMember struct {
	Name     string
	Role     string
	Email    string
	Initials string
	Tag      string // presentation tag for the avatar badge
}

// Branch is the walk-in branch shown on the support page.
type Branch struct {
	Name    string
	Address string
}

// FAQs returns the fixed FAQ list in display order.
func FAQs() []FAQ {
	return []FAQ{
		{
			Question: "How do I reset my transaction PIN?",
			Answer:   "Go to Security Settings and select 'Reset PIN'. You will receive an OTP on your registered mobile number to verify your identity.",
		},
		{
			Question: "What are the bank's working hours?",
			Answer:   "Our branches are open Monday to Friday, 10:00 AM to 4:00 PM. We are closed on 2nd and 4th Saturdays and all public holidays.",
		},
		{
			Question: "How long does an NEFT transfer take?",
			Answer:   "NEFT transactions are processed in hourly batches. Funds are typically credited to the recipient within 2 to 4 hours.",
		},
		{
			Question: "Is my KYC updated?",
			Answer:   "You can check your KYC status in the 'Profile' section. If it shows 'Pending', please visit the Ballygunge branch with your original PAN and Aadhaar card.",
		},
		{
			Question: "How do I check my credit score?",
			Answer:   "We provide a free credit score check once every quarter. You can find this under the 'Loans & Credit' tab on your main dashboard.",
		},
	}
}

// SearchFAQs returns the FAQs whose question contains the query,
// case-insensitively. An empty query matches everything.
func SearchFAQs(query string) []FAQ {
	all := FAQs()
	if query == "" {
		return all
	}
	query = strings.ToLower(query)

	matched := make([]FAQ, 0, len(all))
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Question), query) {
			matched = append(matched, f)
		}
	}
	return matched
}

// Team returns the fixed support team roster.
func Team() []TeamMember {
	return []TeamMember{
		{Name: "Prodosh Mitter", Role: "Branch Manager", Email: "felu.mittir@tddbank.com", Initials: "PM", Tag: "blue"},
		{Name: "Pragyaparamita Mukherjee", Role: "Relationship Manager", Email: "mitin.m@tddbank.com", Initials: "PM", Tag: "amber"},
		{Name: "Lalmohan Ganguly", Role: "Customer Rep", Email: "jatayu@tddbank.com", Initials: "LG", Tag: "green"},
		{Name: "Maganlal Meghraj", Role: "Loan Specialist", Email: "m.meghraj@tddbank.com", Initials: "MM", Tag: "purple"},
		{Name: "Trilokeshwar Shonku", Role: "Technical Support", Email: "iam.prof@tddbank.com", Initials: "TS", Tag: "rose"},
		{Name: "Ekendra Sen", Role: "Insurance Advisor", Email: "babu.eken@tddbank.com", Initials: "ES", Tag: "slate"},
	}
}

// MainBranch returns the walk-in branch contact details.
func MainBranch() Branch {
	return Branch{
		Name:    "Kolkata Main Branch",
		Address: "21 Rajani Sen Road, Ballygunge, Kolkata 700019",
	}
}
