package rules

// Field names with engine-level meaning. The assemblers key identifier
// allocation, balance derivation and missingness protection off these.
const (
	FieldCustomerID   = "cust_id"
	FieldAccountID    = "Customer_Acc"
	FieldAge          = "Age"
	FieldOccupation   = "Stated_Occupation"
	FieldState        = "Location_State"
	FieldTenureMonths = "Account_Tenure_Months"
	FieldAccountType  = "Account_Type"
	FieldBalance      = "Balance"
	FieldAvgBalance   = "Average_Balance"
)

// DefaultRuleSet mirrors the documented workbook layout so the generator
// runs without an external rules file.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{Specs: []RuleSpec{
		{Field: FieldCustomerID, Type: TypeString, Kind: KindDigits, Digits: 8, Width: 8},
		{Field: FieldAccountID, Type: TypeString, Kind: KindDigits, Digits: 14, Width: 14},
		{Field: FieldAge, Type: TypeInt, Kind: KindRange, Min: 10, Max: 99, Width: 2},
		{Field: FieldOccupation, Type: TypeString, Kind: KindList, Catalog: CatalogOccupation},
		{Field: FieldState, Type: TypeString, Kind: KindList, Catalog: CatalogState},
		{Field: FieldTenureMonths, Type: TypeInt, Kind: KindRange, Min: 1, Max: 180, Width: 3},
		{Field: FieldAccountType, Type: TypeString, Kind: KindList, Catalog: CatalogAccountType},
	}}
}
