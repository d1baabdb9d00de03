package redisstore

import (
	"context"
	"fmt"

	"github.com/teazrq/springer-surv/survforest"
	"gopkg.in/redis.v5"
)

/*
TreeEncodeDecoder is an interface for objects that allow encoding
trees into slices of bytes and decoding them back to trees.
*/
type TreeEncodeDecoder interface {

	//Encode receives a *survforest.Tree and returns a slice of
	//bytes with the tree encoded or an error if the encoding could
	//not be performed for some reason.
	Encode(*survforest.Tree) ([]byte, error)

	//Decode receives a slice of bytes and returns a
	//*survforest.Tree decoded from the slice of bytes or an error
	//if the decoding could not be performed for some reason.
	Decode([]byte) (*survforest.Tree, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	tencdec TreeEncodeDecoder
}

//New builds a survforest.TreeStore backed by a redis DB
func New(rc *redis.Client, prefix string, tencdec TreeEncodeDecoder) survforest.TreeStore {
	return &redisStore{rc, prefix, tencdec}
}

func (rs *redisStore) Store(ctx context.Context, index int, t *survforest.Tree) error {
	redisID := rs.keyFor(index)
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", redisID, err)
	}
	_, err = rs.rc.SAdd(rs.indexKey(), index).Result()
	if err != nil {
		return fmt.Errorf("registering tree %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, index int) (*survforest.Tree, error) {
	redisID := rs.keyFor(index)
	data, err := rs.rc.Get(redisID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", redisID, err)
	}
	t, err := rs.tencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding: %v", redisID, err)
	}
	return t, nil
}

func (rs *redisStore) Count(ctx context.Context) (int, error) {
	count, err := rs.rc.SCard(rs.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting trees in redis: %v", err)
	}
	return int(count), nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(index int) string {
	return fmt.Sprintf("%s:tree:%d", rs.prefix, index)
}

func (rs *redisStore) indexKey() string {
	return fmt.Sprintf("%s:trees", rs.prefix)
}
