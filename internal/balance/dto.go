package balance

// UserBalanceResponse is the wire form of one user's balance. Amounts are
// decimal strings at the currency's precision, never binary floats.
type UserBalanceResponse struct {
	UserID     string            `json:"user_id"`
	Owes       map[string]string `json:"owes"`
	OwedBy     map[string]string `json:"owed_by"`
	NetBalance string            `json:"net_balance"`
}

// SimplifiedDebtResponse is the wire form of one suggested payment
type SimplifiedDebtResponse struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

// CurrencyBalancesResponse is the wire form of one currency's computed state
type CurrencyBalancesResponse struct {
	Users           map[string]*UserBalanceResponse `json:"users"`
	SimplifiedDebts []*SimplifiedDebtResponse       `json:"simplified_debts"`
}

// GroupBalancesResponse is the wire form of the full result
type GroupBalancesResponse struct {
	GroupID    string                               `json:"group_id"`
	Currencies map[string]*CurrencyBalancesResponse `json:"currencies"`
}

// ToResponse converts the computed balances to their wire form
func (g *GroupBalances) ToResponse() *GroupBalancesResponse {
	resp := &GroupBalancesResponse{
		GroupID:    g.GroupID,
		Currencies: make(map[string]*CurrencyBalancesResponse, len(g.Currencies)),
	}
	for currency, cb := range g.Currencies {
		out := &CurrencyBalancesResponse{
			Users:           make(map[string]*UserBalanceResponse, len(cb.Users)),
			SimplifiedDebts: make([]*SimplifiedDebtResponse, 0, len(cb.SimplifiedDebts)),
		}
		for id, ub := range cb.Users {
			ur := &UserBalanceResponse{
				UserID:     id,
				Owes:       make(map[string]string, len(ub.Owes)),
				OwedBy:     make(map[string]string, len(ub.OwedBy)),
				NetBalance: currency.Format(ub.Net),
			}
			for other, amount := range ub.Owes {
				ur.Owes[other] = currency.Format(amount)
			}
			for other, amount := range ub.OwedBy {
				ur.OwedBy[other] = currency.Format(amount)
			}
			out.Users[id] = ur
		}
		for _, d := range cb.SimplifiedDebts {
			out.SimplifiedDebts = append(out.SimplifiedDebts, &SimplifiedDebtResponse{
				FromUserID: d.FromUserID,
				ToUserID:   d.ToUserID,
				Amount:     currency.Format(d.Amount),
				Currency:   string(d.Currency),
			})
		}
		resp.Currencies[string(currency)] = out
	}
	return resp
}
