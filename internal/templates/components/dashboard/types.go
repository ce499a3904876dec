package dashboard

type PageData struct {
	Email    string
	DemoMode bool
}
