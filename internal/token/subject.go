package token

import "strconv"

func formatSubject(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func parseSubject(subject string) (uint64, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return id, nil
}
