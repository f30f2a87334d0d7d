package jsonfile

import "github.com/turtacn/LexConnect/internal/domain/lawyer"

// SeedLawyers is the roster written when a store is opened on a missing file.
func SeedLawyers() []*lawyer.Lawyer {
	return []*lawyer.Lawyer{
		{ID: "1", Name: "Rajesh Sharma", Specialization: "Criminal", SubSpecialty: "Murder / Homicide Cases", Experience: 18, Location: "Delhi", Fee: 3000, About: "Trial and appellate criminal defence."},
		{ID: "2", Name: "Priya Mehta", Specialization: "Family", SubSpecialty: "Divorce & Separation", Experience: 12, Location: "Mumbai", Fee: 2000, About: "Contested and mutual-consent divorce."},
		{ID: "3", Name: "Anil Verma", Specialization: "Property", SubSpecialty: "Landlord-Tenant Disputes", Experience: 15, Location: "Dehradun", Fee: 1000, About: "Eviction, rent control and lease disputes."},
		{ID: "4", Name: "Sunita Rao", Specialization: "Property", SubSpecialty: "RERA & Builder Disputes", Experience: 9, Location: "Bengaluru", Fee: 1800, About: "Homebuyer complaints before RERA."},
		{ID: "5", Name: "Vikram Singh", Specialization: "Civil", SubSpecialty: "Cheque Bounce", Experience: 11, Location: "Delhi", Fee: 1200, About: "Section 138 complaints and recovery suits."},
		{ID: "6", Name: "Neha Kapoor", Specialization: "Cyber", SubSpecialty: "Online Fraud", Experience: 7, Location: "Pune", Fee: 1500, About: "UPI, phishing and identity-theft matters."},
		{ID: "7", Name: "Arjun Nair", Specialization: "Corporate", SubSpecialty: "Contract Disputes", Experience: 14, Location: "Mumbai", Fee: 4000, About: "Commercial contracts and arbitration."},
		{ID: "8", Name: "Kavita Joshi", Specialization: "Family", SubSpecialty: "Domestic Violence", Experience: 10, Location: "Dehradun", Fee: 900, About: "Protection orders and maintenance."},
		{ID: "9", Name: "Mohit Gupta", Specialization: "Criminal", SubSpecialty: "Bail & Anticipatory Bail", Experience: 6, Location: "Lucknow", Fee: 800, About: "Bail hearings before sessions courts."},
		{ID: "10", Name: "Farah Khan", Specialization: "Property", SubSpecialty: "Title & Registration", Experience: 21, Location: "Hyderabad", Fee: 2500, About: "Title search, mutation and registration."},
		{ID: "11", Name: "Deepak Chauhan", Specialization: "Civil", SubSpecialty: "Consumer Protection", Experience: 8, Location: "Dehradun", Fee: 700, About: "Consumer commission complaints and appeals."},
		{ID: "12", Name: "Ritu Bansal", Specialization: "Corporate", SubSpecialty: "Wrongful Termination", Experience: 13, Location: "Gurugram", Fee: 2200, About: "Employment disputes and labour court matters."},
	}
}

//Personal.AI order the ending
