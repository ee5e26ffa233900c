package validator

var MustRegister = mustRegister
