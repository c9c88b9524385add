package pubsub

type Publisher interface {
	Publish(data []byte) error
}

type Subscriber interface {
	Subscribe() error
}

// Listener hands out a channel receiving every published message until the
// returned cancel func is called.
type Listener interface {
	Listen() (<-chan []byte, func())
}

type PubSub interface {
	Publisher
	Subscriber
	Listener
}
