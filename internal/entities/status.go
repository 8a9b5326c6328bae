package entities

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
	StatusActive     OrderStatus = "active"
	StatusFailed     OrderStatus = "failed"
	StatusExpired    OrderStatus = "expired"
)

// transitions допустимые переходы: to -> from
var transitions = map[OrderStatus][]OrderStatus{
	StatusPaid:       {StatusPending},
	StatusProcessing: {StatusPaid},
	StatusActive:     {StatusProcessing},
	StatusFailed:     {StatusPaid, StatusProcessing},
	StatusExpired:    {StatusPending},
}

// rank порядок статусов в жизненном цикле, терминальные статусы в конце
var rank = map[OrderStatus]int{
	StatusPending:    0,
	StatusPaid:       1,
	StatusProcessing: 2,
	StatusActive:     3,
	StatusFailed:     3,
	StatusExpired:    3,
}

func (s OrderStatus) Valid() bool {
	_, ok := rank[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusActive || s == StatusFailed || s == StatusExpired
}

// Reached возвращает true, если заказ уже дошёл до статуса s или прошёл его
func (s OrderStatus) Reached(target OrderStatus) bool {
	return rank[s] >= rank[target]
}

// AllowedFrom статусы, из которых можно перейти в to
func AllowedFrom(to OrderStatus) []OrderStatus {
	from := transitions[to]
	out := make([]OrderStatus, len(from))
	copy(out, from)
	return out
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// Deletable заказ можно удалить только до провижининга
func (s OrderStatus) Deletable() bool {
	return s == StatusPending || s == StatusProcessing
}

func ParseStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	return s, s.Valid()
}
