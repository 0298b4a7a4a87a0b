package bankaccount

type CreateBankAccountRequest struct {
	BankName      string  `json:"bank_name" binding:"required"`
	AccountName   string  `json:"account_name" binding:"required"`
	AccountNumber string  `json:"account_number" binding:"required"`
	BSB           *string `json:"bsb"`
	ProfileID     *string `json:"profile_id" binding:"omitempty,uuid"`
	IsPrimary     bool    `json:"is_primary"`
}

type UpdateBankAccountRequest struct {
	BankName      string  `json:"bank_name" binding:"required"`
	AccountName   string  `json:"account_name" binding:"required"`
	AccountNumber string  `json:"account_number" binding:"required"`
	BSB           *string `json:"bsb"`
	IsPrimary     bool    `json:"is_primary"`
}

type BankAccountResponse struct {
	ID            string  `json:"id"`
	BankName      string  `json:"bank_name"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	BSB           *string `json:"bsb,omitempty"`
	ProfileID     *string `json:"profile_id,omitempty"`
	IsPrimary     bool    `json:"is_primary"`
}
