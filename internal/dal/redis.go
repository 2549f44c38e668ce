package dal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis stores each list as a native set under subscribers:<list>.
type Redis struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &Redis{client: client}, nil
}

func (s *Redis) AddMember(ctx context.Context, list string, chatID int64) error {
	if err := s.client.SAdd(ctx, listKey(list), chatID).Err(); err != nil {
		return fmt.Errorf("add chatID=%d to list %q: %w", chatID, list, err)
	}
	return nil
}

func (s *Redis) RemoveMember(ctx context.Context, list string, chatID int64) error {
	if err := s.client.SRem(ctx, listKey(list), chatID).Err(); err != nil {
		return fmt.Errorf("remove chatID=%d from list %q: %w", chatID, list, err)
	}
	return nil
}

func (s *Redis) IsMember(ctx context.Context, list string, chatID int64) (bool, error) {
	res, err := s.client.SIsMember(ctx, listKey(list), chatID).Result()
	if err != nil {
		return false, fmt.Errorf("check chatID=%d in list %q: %w", chatID, list, err)
	}
	return res, nil
}

func (s *Redis) Members(ctx context.Context, list string) ([]int64, error) {
	raw, err := s.client.SMembers(ctx, listKey(list)).Result()
	if err != nil {
		return nil, fmt.Errorf("members of list %q: %w", list, err)
	}

	res := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse chat id %q in list %q: %w", v, list, err)
		}
		res = append(res, id)
	}

	return res, nil
}

func (s *Redis) Close() error {
	return s.client.Close()
}

func listKey(list string) string {
	return "subscribers:" + list
}
