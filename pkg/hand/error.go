package hand

// UserError is an error whose message is safe to return to the client
type UserError string

func (u UserError) Error() string {
	return string(u)
}
