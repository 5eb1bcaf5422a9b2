package elastic

// ClientConfig holds Elasticsearch connection settings.
type ClientConfig struct {
	Addresses []string
	Username  string
	Password  string
}

// ClientOption configures the client.
type ClientOption func(*ClientConfig)

// WithAddresses sets the cluster addresses.
func WithAddresses(addresses []string) ClientOption {
	return func(c *ClientConfig) {
		if len(addresses) > 0 {
			c.Addresses = addresses
		}
	}
}

// WithCredentials sets basic auth credentials.
func WithCredentials(username, password string) ClientOption {
	return func(c *ClientConfig) {
		c.Username = username
		c.Password = password
	}
}
