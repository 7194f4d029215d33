package domain

// Bucket is one status column of a board.
type Bucket struct {
	Status Status   `json:"status"`
	Orders []*Order `json:"orders"`
}

// Board is an ordered list of buckets, one per status of its view.
type Board struct {
	View    View     `json:"view"`
	Buckets []Bucket `json:"buckets"`
}

// Classify partitions orders into the view's buckets. Orders keep the order in
// which they were delivered; statuses outside the view are dropped.
func Classify(orders []*Order, view View) Board {
	statuses := view.Statuses()
	index := make(map[Status]int, len(statuses))
	board := Board{View: view, Buckets: make([]Bucket, len(statuses))}
	for i, st := range statuses {
		index[st] = i
		board.Buckets[i] = Bucket{Status: st, Orders: []*Order{}}
	}

	for _, o := range orders {
		if o == nil {
			continue
		}
		i, ok := index[o.Status]
		if !ok {
			continue
		}
		board.Buckets[i].Orders = append(board.Buckets[i].Orders, o)
	}
	return board
}

// Bucket returns the orders in the given status column.
func (b Board) Bucket(status Status) []*Order {
	for _, bucket := range b.Buckets {
		if bucket.Status == status {
			return bucket.Orders
		}
	}
	return nil
}

// Len counts the orders across all buckets.
func (b Board) Len() int {
	n := 0
	for _, bucket := range b.Buckets {
		n += len(bucket.Orders)
	}
	return n
}
