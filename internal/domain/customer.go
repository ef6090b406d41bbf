package domain

import "strings"

type CustomerInfo struct {
	FirstName  string `json:"firstName" firestore:"firstName" bson:"firstName"`
	LastName   string `json:"lastName" firestore:"lastName" bson:"lastName"`
	Email      string `json:"email" firestore:"email" bson:"email"`
	Phone      string `json:"phone" firestore:"phone" bson:"phone"`
	DancerName string `json:"dancerName" firestore:"dancerName" bson:"dancerName"`
}

// Validate reports whether every contact field is non-empty after trimming.
func (c CustomerInfo) Validate() bool {
	return len(c.Missing()) == 0
}

// Missing lists the JSON names of blank fields, in form order.
func (c CustomerInfo) Missing() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"dancerName", c.DancerName},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (c CustomerInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
