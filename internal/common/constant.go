package common

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8
