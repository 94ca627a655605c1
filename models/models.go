package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Family{},
		&UserFamily{},
		&Child{},
		&UserChild{},
		&Invitation{},
		&Feed{},
		&Sleep{},
		&Diaper{},
		&Temperature{},
		&Weight{},
		&Bath{},
		&Event{},
		&Milestone{},
		&Notification{},
	}
}
