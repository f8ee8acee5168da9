package model

// ActorNode holds the movies an actor appeared in, in dataset order
type ActorNode struct {
	Actor    string
	Children []*Movie
}
