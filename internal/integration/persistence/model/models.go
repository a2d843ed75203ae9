package model

// All returns every model the application migrates.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&ProjectModel{},
		&TransactionModel{},
		&EmailJobModel{},
		&AIAnalysisModel{},
	}
}
