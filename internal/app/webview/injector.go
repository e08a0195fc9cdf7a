package webview

import (
	"strings"

	"github.com/bnema/hostbridge/internal/application/port"
)

const bridgeScriptTemplate = `(function () {
  console.log("hostbridge: connecting router");
  window.acquireHostApi = function () {
    return {
      postMessage: function (message, origin) {
        var text = JSON.stringify(message);
        if (typeof text !== "string") {
          throw new TypeError("hostbridge: message is not serializable");
        }
        __HOSTBRIDGE_SEND__
      }
    };
  };
  window.api = window.acquireHostApi();
  var queued = window.messageQueue;
  if (Array.isArray(queued) && queued.length > 0) {
    console.log("hostbridge: flushing " + queued.length + " queued message(s)");
    window.messageQueue = [];
    for (var i = 0; i < queued.length; i++) {
      try {
        window.api.postMessage(queued[i]);
      } catch (err) {
        console.error("hostbridge: dropped queued message: " + err);
      }
    }
  } else if (!Array.isArray(queued)) {
    window.messageQueue = [];
  }
  console.log("hostbridge: router connected");
})();
`

// BridgeScript returns the script that installs window.acquireHostApi and
// window.api on top of channel, then drains window.messageQueue in order.
// Running it again on the same document replaces the api object and finds
// the queue empty.
func BridgeScript(channel port.QueryChannel) string {
	return strings.Replace(bridgeScriptTemplate, "__HOSTBRIDGE_SEND__", channel.Inject("text"), 1)
}
