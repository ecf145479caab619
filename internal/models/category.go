package models

// Category groups posts by a denormalized name reference.
// PostCount is a stored aggregate maintained by the store on every
// post mutation that touches category membership; it never goes
// negative.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount"`
}
