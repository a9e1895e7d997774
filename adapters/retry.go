// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package adapters

import (
	"context"
	"net"

	"github.com/cenkalti/backoff/v5"

	"code.hybscloud.com/jayo"
)

// DialWithRetry dials network/address, retrying transient failures with
// exponential backoff, and returns the connection wrapped as a
// RawReader/RawWriter pair. Backoff
// governs only redial spacing; it has no bearing on a CancelScope's
// deadline math, which stays exact.
func DialWithRetry(ctx context.Context, network, address string) (*ConnReader, *ConnWriter, error) {
	var d net.Dialer
	conn, err := backoff.Retry(ctx, func() (net.Conn, error) {
		c, dialErr := d.DialContext(ctx, network, address)
		if dialErr != nil {
			return nil, dialErr
		}
		return c, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
	if err != nil {
		return nil, nil, jayo.WrapIOError("dial", err)
	}
	return NewConnReader(conn), NewConnWriter(conn), nil
}
