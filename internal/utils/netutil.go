package utils

import (
	"fmt"
	"net"
	"time"
)

/**
 * Check whether a local TCP port accepts a real connection
 * @param {int} port - Local port to connect to
 * @param {time.Duration} timeout - Dial timeout, must be bounded
 * @returns {bool} Returns true if connect-and-close succeeds
 * @description
 * - A port can sit in the kernel LISTEN table while the process behind it
 *   is already defunct, so this check is authoritative for health decisions
 */
func CheckPortConnectable(port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	if conn != nil {
		conn.Close()
		return true
	}
	return false
}

/**
 * Check whether a remote endpoint is reachable at the transport layer
 * @param {string} target - host:port of the probe target
 * @param {time.Duration} timeout - Dial timeout, must be bounded
 * @returns {bool} Returns true if a TCP connection can be established
 * @description
 * - DNS failure, network unreachable and timeout all report false;
 *   absence of reachability is an expected outcome, never an error
 */
func CheckHostReachable(target string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", target, timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
