package sellerservice

// Company модель компании из SellerService
type Company struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"manager_ids"`
}

